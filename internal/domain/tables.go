package domain

var Tables = []interface{}{
	// Accounts
	&User{},
	&AuditLog{},
	// Catalog
	&Product{},
	// Orders
	&Order{},
	&OrderItem{},
	// Blog
	&Post{},
}
