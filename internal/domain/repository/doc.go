// Package repository define las entidades del dominio y las interfaces de
// acceso a datos. Las implementaciones viven en internal/store (pg).
//
// Convenciones:
//   - Lecturas de una fila: ErrNotFound si no existe.
//   - Lecturas de lista: slice vacío si no hay filas, nunca error.
//   - Escrituras retornan la fila mutada.
package repository
