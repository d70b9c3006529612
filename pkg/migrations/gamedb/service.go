// Package gamedb registers schema migrations for the event index database.
package gamedb

import "github.com/uptrace/bun/migrate"

// Migrations is the registry the migrate command and tests run against.
var Migrations = migrate.NewMigrations()
