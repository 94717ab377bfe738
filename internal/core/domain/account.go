package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountRole is the semantic slot a posting template refers to, e.g. "cash" or "vat-payable".
// The chart of accounts maps each role to a concrete account code per organization.
type AccountRole string

const (
	RoleCash               AccountRole = "cash"
	RoleBank               AccountRole = "bank"
	RoleCardClearing       AccountRole = "card-clearing"
	RoleOtherTenders       AccountRole = "other-tenders"
	RoleServiceRevenue     AccountRole = "service-revenue"
	RoleProductRevenue     AccountRole = "product-revenue"
	RoleSalesRevenue       AccountRole = "sales-revenue"
	RoleVATPayable         AccountRole = "vat-payable"
	RoleVATRecoverable     AccountRole = "vat-recoverable"
	RoleSalaryExpense      AccountRole = "salary-expense"
	RoleRentExpense        AccountRole = "rent-expense"
	RoleUtilitiesExpense   AccountRole = "utilities-expense"
	RoleSuppliesExpense    AccountRole = "supplies-expense"
	RoleMarketingExpense   AccountRole = "marketing-expense"
	RoleInventory          AccountRole = "inventory"
	RoleBankCharges        AccountRole = "bank-charges"
	RoleCommissionExpense  AccountRole = "commission-expense"
	RoleCommissionsPayable AccountRole = "commissions-payable"
)

// ChartAccount is one chart-of-accounts entry bound to a role for an organization.
// The chart itself is reference data owned outside the engine.
type ChartAccount struct {
	OrganizationID string      `json:"organizationID"`
	Role           AccountRole `json:"role"`
	AccountCode    string      `json:"accountCode"`
	AccountName    string      `json:"accountName"`
	AccountType    AccountType `json:"accountType"`
}
