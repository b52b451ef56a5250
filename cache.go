package gbtile

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// TileCache stores packed tile bytes keyed by the SHA-1 of the source
// image file, so unchanged images are not re-encoded on a rescan.
type TileCache struct {
	db *sql.DB
}

func NewTileCache(file string) (*TileCache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS tile (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, data BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	return &TileCache{
		db: db,
	}, nil
}

func (c *TileCache) Close() error {
	return c.db.Close()
}

// Find returns the cached tile bytes for the given SHA-1, or nil without
// error when there is no entry.
func (c *TileCache) Find(sha string) ([]byte, error) {
	var data []byte
	switch err := c.db.QueryRow("SELECT data FROM tile WHERE sha1 = ?", sha).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return data, nil
	default:
		return nil, err
	}
}

func (c *TileCache) Store(sha string, data []byte) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO tile (sha1, data) VALUES (?, ?)", sha, data); err != nil {
		return err
	}
	return nil
}
