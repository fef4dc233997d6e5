package migrations

import "embed"

// FS embeds the ledger schema. golang-migrate reads these files through
// the iofs source driver.
//
//go:embed *.sql
var FS embed.FS

const Version = 1
