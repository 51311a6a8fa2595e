package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "sale:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Sale"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Product management
	{Code: "product:view", Name: "View Product"},
	{Code: "product:create", Name: "Create Product"},
	{Code: "product:update", Name: "Update Product"},
	{Code: "product:delete", Name: "Delete Product"},
	// Register / sales
	{Code: "sale:create", Name: "Create Sale"},
	{Code: "sale:view", Name: "View Sale"},
	{Code: "sale:cancel", Name: "Cancel Sale"},
	{Code: "sale:delete", Name: "Delete Sale"},
	// Customers, sellers and delivery fees
	{Code: "customer:manage", Name: "Manage Customers"},
	{Code: "seller:manage", Name: "Manage Sellers"},
	{Code: "delivery:manage", Name: "Manage Delivery Fees"},
	// Dashboard
	{Code: "dashboard:view", Name: "View Dashboard"},
}
