package actor

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ===============================
// Role
// ===============================

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleProfessional Role = "professional"
	RoleClient       Role = "client"
)

var synonyms = map[string]Role{
	"admin":         RoleAdmin,
	"administrator": RoleAdmin,
	"administrador": RoleAdmin,

	"professional": RoleProfessional,
	"profesional":  RoleProfessional,
	"psicologo":    RoleProfessional,
	"psicologa":    RoleProfessional,
	"psychologist": RoleProfessional,
	"terapeuta":    RoleProfessional,
	"terapista":    RoleProfessional,
	"therapist":    RoleProfessional,

	"client":   RoleClient,
	"cliente":  RoleClient,
	"user":     RoleClient,
	"usuario":  RoleClient,
	"paciente": RoleClient,
	"patient":  RoleClient,
}

// objectKeys are probed in order when the role arrives as a nested object.
var objectKeys = []string{"name", "role", "roleId", "code", "slug", "title"}

// Normalize maps an arbitrary external role token (string, number or
// object) to the canonical role set. Anything unrecognised is a client.
func Normalize(raw any) Role {
	token := strings.TrimSpace(tokenOf(raw))
	if token == "" {
		return RoleClient
	}

	if n, err := strconv.Atoi(token); err == nil {
		switch n {
		case 1:
			return RoleAdmin
		case 2:
			return RoleProfessional
		default:
			return RoleClient
		}
	}

	key := strings.Join(strings.Fields(stripAccents(strings.ToLower(token))), " ")
	if r, ok := synonyms[key]; ok {
		return r
	}
	return RoleClient
}

func tokenOf(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case Role:
		return string(v)
	case string:
		return v
	case float64:
		if v != float64(int64(v)) {
			return ""
		}
		return strconv.FormatInt(int64(v), 10)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case map[string]any:
		for _, k := range objectKeys {
			if inner, ok := v[k]; ok && inner != nil {
				return tokenOf(inner)
			}
		}
		return ""
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleProfessional || r == RoleClient
}

// ===============================
// Actor
// ===============================

// Actor is the authenticated identity invoking a scheduling operation.
type Actor struct {
	ID   uint
	Role Role
}

func New(id uint, raw any) Actor {
	return Actor{ID: id, Role: Normalize(raw)}
}

func (a Actor) IsAdmin() bool        { return a.Role == RoleAdmin }
func (a Actor) IsProfessional() bool { return a.Role == RoleProfessional }
func (a Actor) IsClient() bool       { return a.Role == RoleClient }

// HasRole reports whether the actor holds one of roles.
func (a Actor) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// ParseID accepts the numeric shapes an identity claim may take.
func ParseID(raw any) (uint, bool) {
	switch v := raw.(type) {
	case float64:
		if v <= 0 || v != float64(uint64(v)) {
			return 0, false
		}
		return uint(v), true
	case int:
		if v <= 0 {
			return 0, false
		}
		return uint(v), true
	case int64:
		if v <= 0 {
			return 0, false
		}
		return uint(v), true
	case uint:
		return v, v > 0
	case string:
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil || n == 0 {
			return 0, false
		}
		return uint(n), true
	default:
		return 0, false
	}
}
