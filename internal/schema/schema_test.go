package schema

import (
	"bytes"
	"testing"

	"ormseed/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultPlan(t *testing.T) {
	p := DefaultPlan("ormdb")

	require.Len(t, p.Accounts, 2)
	admin, user := p.Accounts[0], p.Accounts[1]

	assert.Equal(t, "admin", admin.Username)
	assert.Equal(t, "password", admin.Password)
	assert.True(t, admin.HasRole(model.RoleDBOwner, "ormdb"))
	assert.True(t, admin.HasRole(model.RoleReadWrite, "ormdb"))

	assert.Equal(t, "user", user.Username)
	assert.True(t, user.HasRole(model.RoleReadWrite, "ormdb"))
	assert.False(t, user.HasRole(model.RoleDBOwner, "ormdb"))

	assert.Equal(t, []string{"users", "orders", "products"}, p.Collections)
	assert.Equal(t, 3, p.IndexCount())

	require.Len(t, p.Seeds, 2)
	assert.Equal(t, model.Product{Name: "Example Product 1", Price: 10000, Description: "테스트 상품 1"}, *p.Seeds[0])
	assert.Equal(t, model.Product{Name: "Example Product 2", Price: 20000, Description: "테스트 상품 2"}, *p.Seeds[1])
}

func TestDefaultPlanIndexes(t *testing.T) {
	p := DefaultPlan("ormdb")

	assert.Equal(t, map[string][]string{
		CollUsers:    {"email_1"},
		CollOrders:   {"orderDate_1"},
		CollProducts: {"name_1"},
	}, p.IndexNames())

	assert.True(t, IsUnique(p.Indexes[CollUsers][0]))
	assert.False(t, IsUnique(p.Indexes[CollOrders][0]))
	assert.False(t, IsUnique(p.Indexes[CollProducts][0]))
}

func TestDefaultPlanIsFreshEachCall(t *testing.T) {
	a := DefaultPlan("ormdb")
	a.Seeds[0].Price = 1
	a.Indexes[CollUsers] = nil

	b := DefaultPlan("ormdb")
	assert.Equal(t, 10000, b.Seeds[0].Price)
	assert.Len(t, b.Indexes[CollUsers], 1)
}

func TestDefaultPlanFollowsDatabaseName(t *testing.T) {
	p := DefaultPlan("otherdb")
	for _, acc := range p.Accounts {
		for _, r := range acc.Roles {
			assert.Equal(t, "otherdb", r.DB)
		}
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DefaultPlan("ormdb").Render(&buf, true))

	out := buf.String()
	assert.NotContains(t, out, "password")

	var got struct {
		Database string `yaml:"database"`
		Mode     string `yaml:"mode"`
		Accounts []struct {
			User string `yaml:"user"`
		} `yaml:"accounts"`
		Indexes []struct {
			Collection string `yaml:"collection"`
			Field      string `yaml:"field"`
			Order      int    `yaml:"order"`
			Unique     bool   `yaml:"unique"`
		} `yaml:"indexes"`
		Seeds []model.Product `yaml:"seeds"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "ormdb", got.Database)
	assert.Equal(t, "idempotent", got.Mode)
	require.Len(t, got.Accounts, 2)
	assert.Equal(t, "admin", got.Accounts[0].User)

	// sorted by collection name
	require.Len(t, got.Indexes, 3)
	assert.Equal(t, "orders", got.Indexes[0].Collection)
	assert.Equal(t, "products", got.Indexes[1].Collection)
	assert.Equal(t, "users", got.Indexes[2].Collection)
	assert.Equal(t, "email", got.Indexes[2].Field)
	assert.Equal(t, 1, got.Indexes[2].Order)
	assert.True(t, got.Indexes[2].Unique)

	require.Len(t, got.Seeds, 2)
	assert.Equal(t, "테스트 상품 2", got.Seeds[1].Description)
}
