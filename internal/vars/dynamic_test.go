package vars

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestDynamicsCatalogOrder(t *testing.T) {
	t.Parallel()

	names := make([]string, 0)
	for _, dyn := range Dynamics() {
		names = append(names, dyn.Name)
		if dyn.Description == "" {
			t.Fatalf("%s has no description", dyn.Name)
		}
		if dyn.Generate == nil {
			t.Fatalf("%s has no generator", dyn.Name)
		}
	}
	want := "$timestamp $timestampISO8601 $randomInt $guid $uuid $randomEmail"
	if got := strings.Join(names, " "); got != want {
		t.Fatalf("catalog order = %q, want %q", got, want)
	}
}

func TestLookupDynamicExactName(t *testing.T) {
	t.Parallel()

	if _, ok := LookupDynamic("$guid"); !ok {
		t.Fatalf("$guid missing from catalog")
	}
	if _, ok := LookupDynamic("guid"); ok {
		t.Fatalf("lookup must require the $ prefix")
	}
	if _, ok := LookupDynamic("$GUID"); ok {
		t.Fatalf("lookup is exact, $GUID must miss")
	}
}

func TestGeneratedFormats(t *testing.T) {
	t.Parallel()

	ts, _ := LookupDynamic("$timestamp")
	if _, err := strconv.ParseInt(ts.Generate(), 10, 64); err != nil {
		t.Fatalf("timestamp: %v", err)
	}

	iso, _ := LookupDynamic("$timestampISO8601")
	if _, err := time.Parse(time.RFC3339, iso.Generate()); err != nil {
		t.Fatalf("timestampISO8601: %v", err)
	}

	ri, _ := LookupDynamic("$randomInt")
	n, err := strconv.ParseInt(ri.Generate(), 10, 64)
	if err != nil {
		t.Fatalf("randomInt: %v", err)
	}
	if n < 0 {
		t.Fatalf("randomInt = %d, want non-negative", n)
	}

	for _, name := range []string{"$guid", "$uuid"} {
		dyn, _ := LookupDynamic(name)
		id := dyn.Generate()
		if len(id) != 36 || strings.Count(id, "-") != 4 {
			t.Fatalf("%s generated %q", name, id)
		}
	}

	email, _ := LookupDynamic("$randomEmail")
	addr := email.Generate()
	if !strings.HasSuffix(addr, "@example.com") || strings.Count(addr, "@") != 1 {
		t.Fatalf("randomEmail generated %q", addr)
	}
}

func TestGeneratorsAreFresh(t *testing.T) {
	t.Parallel()

	dyn, _ := LookupDynamic("$uuid")
	if dyn.Generate() == dyn.Generate() {
		t.Fatalf("consecutive uuids collided")
	}
}
