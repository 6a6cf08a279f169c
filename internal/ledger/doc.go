// Package ledger persists the history of musiclink runs in SQLite.
//
// Each invocation with the ledger enabled records one run row and one link row
// per destination it created or found already present. The database uses WAL
// mode and retries writes that hit SQLITE_BUSY so a `history` query can run
// alongside an active run.
package ledger
