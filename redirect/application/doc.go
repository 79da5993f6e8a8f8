// Package application contém os casos de uso do redirect e do limite de
// concorrência.
//
// Ele depende apenas do pacote domain e não conhece net/http.
// Ex.: Service.Resolve(ctx, key) retorna um Result (found/not found + Location).
package application
