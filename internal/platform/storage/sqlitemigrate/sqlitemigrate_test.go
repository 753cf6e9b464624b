package sqlitemigrate

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func TestApplyRecordsMigration(t *testing.T) {
	db := openInMemoryDB(t)
	migrations := fstest.MapFS{
		"slots/001_create.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE jars(id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE jars;"),
		},
	}

	if err := Apply(context.Background(), db, migrations, "slots"); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if got := queryString(t, db, "SELECT name FROM schema_migrations"); got != "slots/001_create.sql" {
		t.Fatalf("migration key = %q, want slots/001_create.sql", got)
	}
	if !tableExists(t, db, "jars") {
		t.Fatal("expected jars table to exist")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	db := openInMemoryDB(t)
	migrations := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{Data: []byte("CREATE TABLE jars(id TEXT PRIMARY KEY);")},
	}

	for i := 0; i < 2; i++ {
		if err := Apply(context.Background(), db, migrations, ""); err != nil {
			t.Fatalf("apply #%d: %v", i+1, err)
		}
	}
	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 1 {
		t.Fatalf("migration rows = %d, want 1", rows)
	}
}

func TestApplyLeavesFailedMigrationUnrecorded(t *testing.T) {
	db := openInMemoryDB(t)
	bad := fstest.MapFS{
		"001_jars.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREAT TABLE jars(id INT);")},
	}
	if err := Apply(context.Background(), db, bad, ""); err == nil {
		t.Fatal("expected bad migration to fail")
	}
	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 0 {
		t.Fatalf("migration rows = %d, want 0", rows)
	}

	good := fstest.MapFS{
		"001_jars.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREATE TABLE jars(id INTEGER PRIMARY KEY);")},
	}
	if err := Apply(context.Background(), db, good, ""); err != nil {
		t.Fatalf("apply fixed migration: %v", err)
	}
	if rows := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); rows != 1 {
		t.Fatalf("migration rows = %d, want 1", rows)
	}
}

func TestApplyHonorsCanceledContext(t *testing.T) {
	db := openInMemoryDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	migrations := fstest.MapFS{
		"001_jars.sql": &fstest.MapFile{Data: []byte("CREATE TABLE jars(id TEXT);")},
	}
	if err := Apply(ctx, db, migrations, ""); err == nil {
		t.Fatal("expected canceled context to fail")
	}
}

func TestApplyRequiresDB(t *testing.T) {
	if err := Apply(context.Background(), nil, fstest.MapFS{}, ""); err == nil {
		t.Fatal("expected error for nil db")
	}
}

func TestLoadOrdersAndFilters(t *testing.T) {
	migrations := fstest.MapFS{
		"002_b.sql":   &fstest.MapFile{Data: []byte("-- +migrate Up\nB")},
		"001_a.sql":   &fstest.MapFile{Data: []byte("A")},
		"README.md":   &fstest.MapFile{Data: []byte("notes")},
		"sub/003.sql": &fstest.MapFile{Data: []byte("C")},
	}
	got, err := Load(migrations, ".")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("migrations = %d, want 2", len(got))
	}
	if got[0].Name != "001_a.sql" || got[1].Name != "002_b.sql" {
		t.Fatalf("names = %q, %q", got[0].Name, got[1].Name)
	}
	if got[1].Up != "\nB" {
		t.Fatalf("up = %q, want %q", got[1].Up, "\nB")
	}
}

func TestExtractUpMigration(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "CREATE TABLE a;", want: "CREATE TABLE a;"},
		{in: "-- +migrate Up\nA;", want: "\nA;"},
		{in: "-- +migrate Up\nA;\n-- +migrate Down\nB;", want: "\nA;\n"},
	}
	for _, tc := range cases {
		if got := ExtractUpMigration(tc.in); got != tc.want {
			t.Fatalf("ExtractUpMigration(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsAlreadyExistsError(t *testing.T) {
	if IsAlreadyExistsError(nil) {
		t.Fatal("nil error should not match")
	}
	if !IsAlreadyExistsError(errors.New("table jars already exists")) {
		t.Fatal("expected already exists to match")
	}
	if !IsAlreadyExistsError(errors.New("duplicate column name: bank")) {
		t.Fatal("expected duplicate column to match")
	}
	if IsAlreadyExistsError(errors.New("syntax error")) {
		t.Fatal("syntax error should not match")
	}
}

func openInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close db: %v", err)
		}
	})
	return db
}

func queryInt64(t *testing.T, db *sql.DB, query string) int64 {
	t.Helper()
	var value int64
	if err := db.QueryRow(query).Scan(&value); err != nil {
		t.Fatalf("query int value: %v", err)
	}
	return value
}

func queryString(t *testing.T, db *sql.DB, query string) string {
	t.Helper()
	var value string
	if err := db.QueryRow(query).Scan(&value); err != nil {
		t.Fatalf("query string value: %v", err)
	}
	return value
}

func tableExists(t *testing.T, db *sql.DB, tableName string) bool {
	t.Helper()
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", tableName).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		t.Fatalf("check table exists: %v", err)
	}
	return name == tableName
}
