// assets/embed.go
//
// Embedded fallback word lists and sqlite migrations.
//   - answers.txt: default answer list (one word per line, '#' comments allowed)
//   - guesses.txt: default guess vocabulary
//   - sql/*.sql:   schema migrations applied in lexical order

package assets

import (
	"embed"
	"io"
	"io/fs"
)

//go:embed answers.txt guesses.txt
var FS embed.FS

//go:embed sql/*.sql
var sqlFS embed.FS

func open(name string) (io.ReadCloser, error) {
	return FS.Open(name)
}

// Answers opens the embedded answer list.
func Answers() (io.ReadCloser, error) {
	return open("answers.txt")
}

// Guesses opens the embedded guess vocabulary.
func Guesses() (io.ReadCloser, error) {
	return open("guesses.txt")
}

// Migrations returns the migration files rooted at "sql".
func Migrations() fs.FS {
	sub, err := fs.Sub(sqlFS, "sql")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}
