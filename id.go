package jobbot

import "github.com/jacobmcleman/JobBot/id"

// ID is the debug/correlation identifier type used for jobs and
// workers; see package id.
type ID = id.ID

// Prefix identifies the entity type encoded in an ID.
type Prefix = id.Prefix
