package db

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike quotes LIKE metacharacters so s matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Contains builds an ILIKE pattern matching s anywhere in a column.
func Contains(s string) string {
	return "%" + EscapeLike(s) + "%"
}

// Prefix builds an ILIKE pattern matching columns starting with s.
func Prefix(s string) string {
	return EscapeLike(s) + "%"
}
