// Package adapters puts pgxpool.Pool, sql.DB and sqlx.DB behind one small DBAdapter interface,
// so the SQL engines don't care which driver the application opened.
package adapters
