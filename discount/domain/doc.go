// Package domain define tipos e contratos do domínio de desconto.
//
// Este pacote não depende de net/http, redis nem de implementações concretas.
// A regra de cálculo (preço - preço*taxa) vive aqui, junto com a validação
// de entradas e a interface de persistência de estatísticas.
package domain
