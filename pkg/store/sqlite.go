package store

import (
	"database/sql"
	"errors"
	"fmt"
	"unicode/utf8"

	. "github.com/elves/edline/pkg/store/storedefs"
	_ "modernc.org/sqlite" // enable the "sqlite" SQL driver
)

var createTable = map[string]string{
	"cmd": `create table if not exists cmd (seq integer primary key autoincrement, content text not null)`,
}

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens a DBStore backed by a SQLite database file.
func NewSQLiteStore(path string) (DBStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(1000)")
	if err != nil {
		return nil, err
	}
	st, err := NewSQLiteStoreDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Println("opened sqlite history", path)
	return st, nil
}

// NewSQLiteStoreDB creates a DBStore with a custom database. The database must
// be a SQLite database.
func NewSQLiteStoreDB(db *sql.DB) (DBStore, error) {
	for t, q := range createTable {
		if _, err := db.Exec(q); err != nil {
			return nil, fmt.Errorf("initialize table %s: %w", t, err)
		}
	}
	return &sqliteStore{db}, nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }

// NextCmdSeq returns the next sequence number of the command history.
func (s *sqliteStore) NextCmdSeq() (int, error) {
	row := s.db.QueryRow(`select ifnull((select seq from sqlite_sequence where name = 'cmd'), 0) + 1`)
	var seq int
	err := row.Scan(&seq)
	return seq, err
}

// AddCmd adds a new command to the command history.
func (s *sqliteStore) AddCmd(cmd string) (int, error) {
	res, err := s.db.Exec(`insert into cmd (content) values (?)`, cmd)
	if err != nil {
		return 0, err
	}
	seq, err := res.LastInsertId()
	return int(seq), err
}

// DelCmd deletes a command history item with the given sequence number.
func (s *sqliteStore) DelCmd(seq int) error {
	_, err := s.db.Exec(`delete from cmd where seq = ?`, seq)
	return err
}

// Cmd queries the command history item with the specified sequence number.
func (s *sqliteStore) Cmd(seq int) (string, error) {
	var cmd string
	err := s.db.QueryRow(`select content from cmd where seq = ?`, seq).Scan(&cmd)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNoMatchingCmd
	}
	return cmd, err
}

// CmdsWithSeq returns all commands within the specified range.
func (s *sqliteStore) CmdsWithSeq(from, upto int) ([]Cmd, error) {
	rows, err := s.db.Query(`select seq, content from cmd where seq >= ? and seq < ? order by seq`, from, upto)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cmds []Cmd
	for rows.Next() {
		var cmd Cmd
		if err := rows.Scan(&cmd.Seq, &cmd.Text); err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, rows.Err()
}

// substr counts characters, not bytes.
const prefixCond = `substr(content, 1, ?) = ?`

// NextCmd finds the first command after the given sequence number (inclusive)
// with the given prefix.
func (s *sqliteStore) NextCmd(from int, prefix string) (Cmd, error) {
	return convertCmd(s.db.QueryRow(
		`select seq, content from cmd where seq >= ? and `+prefixCond+` order by seq asc limit 1`,
		from, utf8.RuneCountInString(prefix), prefix))
}

// PrevCmd finds the last command before the given sequence number (exclusive)
// with the given prefix.
func (s *sqliteStore) PrevCmd(upto int, prefix string) (Cmd, error) {
	return convertCmd(s.db.QueryRow(
		`select seq, content from cmd where seq < ? and `+prefixCond+` order by seq desc limit 1`,
		upto, utf8.RuneCountInString(prefix), prefix))
}

func convertCmd(row *sql.Row) (Cmd, error) {
	var cmd Cmd
	err := row.Scan(&cmd.Seq, &cmd.Text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNoMatchingCmd
		}
		return Cmd{}, err
	}
	return cmd, nil
}
