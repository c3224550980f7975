// Package statementid builds the two canonical statementId formats
// named in spec.md §3: the ORM-layer "<namespace>.<method>" form and
// the JDBC-layer "jdbc.<interceptor>:<datasource>:<8-hex-hash>" form.
package statementid

import (
	"crypto/md5" //nolint:gosec // used only as a short, stable statement fingerprint, not for security
	"encoding/hex"
	"fmt"
)

// MyBatis builds the ORM-layer statementId for a mapper call site.
func MyBatis(namespace, method string) string {
	return fmt.Sprintf("%s.%s", namespace, method)
}

// JDBC builds the JDBC-layer statementId for a raw SQL call site. The
// hash is the first 8 hex characters of MD5 over the raw SQL text,
// which collision-resists uniquely identifying distinct SQL text per
// datasource without embedding the (potentially large) SQL itself in
// the id.
func JDBC(interceptor, datasource, sql string) string {
	sum := md5.Sum([]byte(sql)) //nolint:gosec // fingerprint, not a security boundary
	return fmt.Sprintf("jdbc.%s:%s:%s", interceptor, datasource, hex.EncodeToString(sum[:])[:8])
}
