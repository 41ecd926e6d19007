package vars

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DynamicVariable is one built-in generator. Name carries the leading
// $ so catalog names line up with the tokens users type.
type DynamicVariable struct {
	Name        string
	Description string
	Generate    func() string
}

var dynamicCatalog = []DynamicVariable{
	{
		Name:        "$timestamp",
		Description: "Current Unix timestamp in seconds",
		Generate: func() string {
			return strconv.FormatInt(time.Now().Unix(), 10)
		},
	},
	{
		Name:        "$timestampISO8601",
		Description: "Current UTC time in ISO 8601 format",
		Generate: func() string {
			return time.Now().UTC().Format(time.RFC3339)
		},
	},
	{
		Name:        "$randomInt",
		Description: "Random non-negative integer",
		Generate:    randomInt,
	},
	{
		Name:        "$guid",
		Description: "Random version 4 UUID",
		Generate:    uuid.NewString,
	},
	{
		Name:        "$uuid",
		Description: "Random version 4 UUID",
		Generate:    uuid.NewString,
	},
	{
		Name:        "$randomEmail",
		Description: "Random mailbox at example.com",
		Generate:    randomEmail,
	},
}

var dynamicByName = func() map[string]DynamicVariable {
	m := make(map[string]DynamicVariable, len(dynamicCatalog))
	for _, dyn := range dynamicCatalog {
		m[dyn.Name] = dyn
	}
	return m
}()

// Dynamics returns the catalog in its fixed presentation order.
func Dynamics() []DynamicVariable {
	out := make([]DynamicVariable, len(dynamicCatalog))
	copy(out, dynamicCatalog)
	return out
}

// LookupDynamic finds a catalog entry by its exact name, leading $
// included. Unknown $-names are not an error for the resolver, they
// just generate nothing.
func LookupDynamic(name string) (DynamicVariable, bool) {
	dyn, ok := dynamicByName[name]
	return dyn, ok
}

func randomInt() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(1<<62))
	return n.String()
}

func randomEmail() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return "user-" + hex.EncodeToString(b) + "@example.com"
}
