package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	c := Load()
	if c.HashScheme != "argon2id" {
		t.Fatalf("HashScheme = %q", c.HashScheme)
	}
	if !c.EscrowEnabled {
		t.Fatal("escrow should default on")
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoad_EscrowToggle(t *testing.T) {
	t.Setenv("ESCROW_ENABLED", "false")
	if Load().EscrowEnabled {
		t.Fatal("ESCROW_ENABLED=false not honored")
	}
}

func TestValidate_BadHashScheme(t *testing.T) {
	c := Load()
	c.HashScheme = "md5"
	if err := c.Validate(); err == nil {
		t.Fatal("want error for bad hash scheme")
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLHost: "db", MySQLPort: "3306", MySQLDB: "admissions", MySQLUser: "u", MySQLPass: "p"}
	dsn := c.MySQLDSN()
	if !strings.Contains(dsn, "u:p@tcp(db:3306)/admissions") || !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("dsn = %q", dsn)
	}
}
