package user

import (
	"fmt"
	"strconv"
	"strings"

	"novalib-backend/internal/shared/utils"
)

// Identifiers is the set of optional lookup keys a circulation query
// may supply. Any non-empty field contributes an OR clause; an empty
// struct resolves nothing and leaves the query unscoped.
type Identifiers struct {
	Barcode  string
	UserID   string // numeric id as passed on the query string
	Email    string
	Username string // full or partial name; barcode/email also accepted here
}

// Empty reports whether no identifier was supplied.
func (q Identifiers) Empty() bool {
	return q.Barcode == "" && q.UserID == "" && q.Email == "" && q.Username == ""
}

// ResolveClause builds the WHERE fragment matching users against the
// supplied identifiers, OR-combined. Placeholders are numbered from
// startArg so the fragment can be embedded in a larger query.
//
// Username matching mirrors the legacy behavior: an exact
// first+last pair when two or more words are given, broadened with
// partial matches on either name part, and the whole value is also
// tried as a barcode or email.
func ResolveClause(q Identifiers, startArg int) (string, []any) {
	var clauses []string
	var args []any

	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", startArg+len(args)-1)
	}

	if q.Barcode != "" {
		clauses = append(clauses, fmt.Sprintf("LOWER(u.barcode) = LOWER(%s)", next(q.Barcode)))
	}
	if q.UserID != "" {
		if id, err := strconv.ParseInt(q.UserID, 10, 64); err == nil {
			clauses = append(clauses, fmt.Sprintf("u.id = %s", next(id)))
		}
	}
	if q.Email != "" {
		clauses = append(clauses, fmt.Sprintf("LOWER(u.email) = LOWER(%s)", next(q.Email)))
	}
	if q.Username != "" {
		parts := strings.Fields(q.Username)
		if len(parts) >= 2 {
			first := next(parts[0])
			last := next(parts[len(parts)-1])
			clauses = append(clauses, fmt.Sprintf(
				"(LOWER(u.first_name) = LOWER(%s) AND LOWER(u.last_name) = LOWER(%s))", first, last))
		}
		clauses = append(clauses, fmt.Sprintf("u.first_name ILIKE '%%' || %s || '%%'", next(q.Username)))
		clauses = append(clauses, fmt.Sprintf("u.last_name ILIKE '%%' || %s || '%%'", next(q.Username)))
		clauses = append(clauses, fmt.Sprintf("LOWER(u.barcode) = LOWER(%s)", next(q.Username)))
		clauses = append(clauses, fmt.Sprintf("LOWER(u.email) = LOWER(%s)", next(q.Username)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return "(" + utils.JoinWithOr(clauses) + ")", args
}
