package seeder

// Defaults returns the demo data seeders in dependency order.
func Defaults(password string) []Seeder {
	return []Seeder{
		AccountsSeeder{Password: password},
		ProfilesSeeder{},
		JobsSeeder{},
	}
}
