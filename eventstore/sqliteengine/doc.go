// Package sqliteengine provides a SQLite implementation of the eventstore Query/Append contract,
// for single-node deployments that want durability without running PostgreSQL.
//
// Payload predicates use json_extract. The connection pool is limited to one connection,
// so the conditional append never races another writer inside the same process.
package sqliteengine
