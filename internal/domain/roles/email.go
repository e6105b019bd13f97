package roles

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Institutional email local parts end in ".<2-digit year><3-letter dept>",
// e.g. priya.24ece@kongu.edu.
var localPartPattern = regexp.MustCompile(`\.(\d{2})([a-zA-Z]{3})$`)

// now is swappable in tests.
var now = time.Now

// Parsed is the ephemeral result of decoding an institutional email. It is
// never persisted; recompute on demand.
type Parsed struct {
	JoiningYear int
	Department  string
}

// EmailRule holds the institutional constants email-based role detection
// depends on. Domain includes the leading "@".
type EmailRule struct {
	Domain       string
	ProgramYears int
}

// Parse extracts the joining year and department code from an
// institutional email. The second return is false when the address is not
// on the configured domain or the local part lacks the year/dept suffix;
// that is not an error, the caller just cannot infer anything from it.
func (r EmailRule) Parse(email string) (Parsed, bool) {
	if email == "" || !strings.HasSuffix(email, r.Domain) {
		return Parsed{}, false
	}

	local := email[:strings.Index(email, "@")]
	m := localPartPattern.FindStringSubmatch(local)
	if m == nil {
		return Parsed{}, false
	}

	yearDigits, _ := strconv.Atoi(m[1])
	// Anchor to the running century so the rule survives century rollover
	// without a hardcoded cutoff.
	century := now().Year() / 100 * 100

	return Parsed{
		JoiningYear: century + yearDigits,
		Department:  strings.ToUpper(m[2]),
	}, true
}

// DetectRole infers STUDENT or ALUMNI from an email. An unparseable email
// defaults to STUDENT. A user graduating in the current year is still a
// STUDENT; only a strictly-past graduation year makes an ALUMNI.
func (r EmailRule) DetectRole(email string) Role {
	parsed, ok := r.Parse(email)
	if !ok {
		return RoleStudent
	}

	graduationYear := parsed.JoiningYear + r.ProgramYears
	if now().Year() > graduationYear {
		return RoleAlumni
	}
	return RoleStudent
}

// ValidateRegistrationYear enforces the registration-only constraint that
// the 2-digit enrollment year lies between 01 and the current year. It is
// distinct from a failed Parse: a malformed address is rejected here with a
// caller-visible validation error rather than silently defaulting.
func (r EmailRule) ValidateRegistrationYear(email string) error {
	if !strings.HasSuffix(email, r.Domain) {
		return fmt.Errorf("registration is exclusive to %s", r.Domain)
	}

	local := email[:strings.Index(email, "@")]
	m := localPartPattern.FindStringSubmatch(local)
	if m == nil {
		return fmt.Errorf("invalid email format (name.yearDept%s)", r.Domain)
	}

	yearDigits, _ := strconv.Atoi(m[1])
	currentYearDigits := now().Year() % 100
	if yearDigits < 1 || yearDigits > currentYearDigits {
		return fmt.Errorf("year must be between 01 and %02d", currentYearDigits)
	}
	return nil
}
