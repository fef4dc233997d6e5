package configs

// Admin configures the admin credential check. PasswordHash is a bcrypt
// hash (see the hash-password command); when empty, admin login is
// disabled.
type Admin struct {
	Username     string `env:"USERNAME" envDefault:"admin"`
	PasswordHash string `env:"PASSWORD_HASH"`
}
