package model

// Built-in MongoDB roles granted by the bootstrap.
const (
	RoleDBOwner   = "dbOwner"
	RoleReadWrite = "readWrite"
)

// RoleGrant binds a role to the database it applies to.
type RoleGrant struct {
	Role string `bson:"role" json:"role" yaml:"role"`
	DB   string `bson:"db" json:"db" yaml:"db"`
}

// Account is a database user created with the createUser command.
// Password is never rendered.
type Account struct {
	Username string      `bson:"user" json:"user" yaml:"user"`
	Password string      `bson:"-" json:"-" yaml:"-"`
	Roles    []RoleGrant `bson:"roles" json:"roles" yaml:"roles"`
}

// HasRole reports whether the account is granted role on db.
func (a *Account) HasRole(role, db string) bool {
	for _, r := range a.Roles {
		if r.Role == role && r.DB == db {
			return true
		}
	}
	return false
}
