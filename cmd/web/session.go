package main

import (
	"encoding/gob"

	"github.com/myrjola/existyet/internal/investors"
)

func init() {
	gob.Register(investors.Form{})
}

type sessionKey string

// investorSearchSessionKey holds the validated [investors.Form] of the latest investor search.
const investorSearchSessionKey = sessionKey("investorSearch")
