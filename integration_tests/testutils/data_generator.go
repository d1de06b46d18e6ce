package testutils

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator provides methods to create test data for integration tests
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
	seq   atomic.Int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{faker: gofakeit.New(uint64(s)), seed: s}
}

func (g *TestDataGenerator) Seed() int64 { return g.seed }

func (g *TestDataGenerator) next() int64 { return g.seq.Add(1) }

// Account is a registration payload that passes every field rule.
type Account struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	RoleName string `json:"roleName"`
}

func (g *TestDataGenerator) GenerateAccount(role string) Account {
	n := g.next()
	return Account{
		UserName: g.faker.Name(),
		Email:    fmt.Sprintf("%s.%d@%s", g.faker.Username(), n, g.faker.DomainName()),
		Password: "Aa1" + g.faker.LetterN(9),
		Phone:    g.faker.Numerify("01#########"),
		RoleName: role,
	}
}

// GenerateClubName returns a name unique within this generator.
func (g *TestDataGenerator) GenerateClubName() string {
	return fmt.Sprintf("%s Club %d", g.faker.Company(), g.next())
}

func (g *TestDataGenerator) GenerateEventName() string {
	return fmt.Sprintf("%s %d", g.faker.HipsterWord(), g.next())
}

func (g *TestDataGenerator) Sentence() string {
	return g.faker.Sentence(8)
}
