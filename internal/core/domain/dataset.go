package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dataset is the whole persisted document: every user, workspace and transaction.
type Dataset struct {
	Users        []UserProfile `json:"users"`
	Workspaces   []Workspace   `json:"workspaces"`
	Transactions []Transaction `json:"transactions"`
}

// SystemStats summarizes dataset size for the admin panel.
type SystemStats struct {
	Users        int `json:"users"`
	Workspaces   int `json:"workspaces"`
	Transactions int `json:"transactions"`
}

// Stats counts the entities in the dataset.
func (d Dataset) Stats() SystemStats {
	return SystemStats{
		Users:        len(d.Users),
		Workspaces:   len(d.Workspaces),
		Transactions: len(d.Transactions),
	}
}

// Normalize replaces nil slices with empty ones so the document always encodes as arrays.
func (d *Dataset) Normalize() {
	if d.Users == nil {
		d.Users = []UserProfile{}
	}
	if d.Workspaces == nil {
		d.Workspaces = []Workspace{}
	}
	if d.Transactions == nil {
		d.Transactions = []Transaction{}
	}
	for i := range d.Workspaces {
		if d.Workspaces[i].Members == nil {
			d.Workspaces[i].Members = []string{}
		}
		if d.Workspaces[i].Categories == nil {
			d.Workspaces[i].Categories = []string{}
		}
	}
}

// SeedDataset returns the demo dataset used when nothing has been stored yet.
func SeedDataset(now time.Time) Dataset {
	light := func() *UserPreferences { return &UserPreferences{Theme: ThemeLight} }
	return Dataset{
		Users: []UserProfile{
			{ID: "u1", Email: "demo@orbit.com", Name: "Demo User", AvatarURL: AvatarURLFor("Felix"), Role: RoleUser, Preferences: light()},
			{ID: "admin1", Email: "admin@orbit.com", Name: "System Admin", AvatarURL: AvatarURLFor("Admin"), Role: RoleAdmin, Preferences: light()},
		},
		Workspaces: []Workspace{
			{
				ID:           "w1",
				Name:         "Main Wallet",
				OwnerID:      "u1",
				Members:      []string{"demo@orbit.com"},
				CurrencyCode: "USD",
				Categories:   []string{"General", "Food", "Rent", "Freelance", "Subscription", "Health"},
			},
		},
		Transactions: []Transaction{
			{ID: "t1", WorkspaceID: "w1", Amount: decimal.NewFromInt(5000), Category: "Freelance", Description: "Web Project", Date: now, Type: Income, CreatedBy: "demo@orbit.com"},
			{ID: "t2", WorkspaceID: "w1", Amount: decimal.NewFromInt(1200), Category: "Rent", Description: "Monthly Apartment", Date: now, Type: Expense, CreatedBy: "demo@orbit.com"},
			{ID: "t3", WorkspaceID: "w1", Amount: decimal.NewFromInt(45), Category: "Food", Description: "Sushi Dinner", Date: now, Type: Expense, CreatedBy: "demo@orbit.com"},
		},
	}
}
