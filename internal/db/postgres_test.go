package db

import "testing"

func TestOpen_InvalidDSN(t *testing.T) {
	conn, err := Open("not a valid dsn ://")
	if err == nil {
		_ = conn.Close()
		t.Fatal("Open with invalid DSN should return error")
	}
}
