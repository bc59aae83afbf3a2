package models

// User is an account record.
//
//arango:build_json
//arango:sync_level=document
type User struct {
	Name    string   `arango:"db_name=nm,skip_in_json"`
	Email   string   `arango:"attr(validate:\"email\")"`
	Profile *Profile `arango:"inner_model=struct"`
	Role    Role     `arango:"inner_model=enum"`
}

// Profile holds free-form account detail.
type Profile struct {
	Bio string
}

// Role classifies account capability.
//
//arango:skip_fields
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// AuditEntry records who touched an account.
type AuditEntry struct {
	Profile
	Actor string
}

// Token is a plain named type, not a model.
type Token string
