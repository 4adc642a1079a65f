// Package sqlengine holds the Query/Append implementation shared by postgresengine and sqliteengine.
//
// The engines only contribute a database adapter, a sqlbuild.Dialect and the schema; reading rows,
// detecting concurrency conflicts and reporting logs, metrics and spans happens here.
package sqlengine
