package auth

const (
	RoleHRManager = "hr_manager"
	RoleEmployee  = "employee"
	RoleFinance   = "finance"
)

const (
	DepartmentHR         = "HR"
	DepartmentFinance    = "Finance"
	DepartmentIT         = "IT"
	DepartmentSales      = "Sales"
	DepartmentOperations = "Operations"
)

var Roles = []string{RoleHRManager, RoleEmployee, RoleFinance}

var Departments = []string{
	DepartmentHR,
	DepartmentFinance,
	DepartmentIT,
	DepartmentSales,
	DepartmentOperations,
}

// Predicate is a capability check over the authenticated identity. Every
// workflow entry point is gated by one (or an OR of several).
type Predicate func(UserContext) bool

// IsHRManager is true for the HR manager role and for any superuser.
func IsHRManager(u UserContext) bool {
	return u.Superuser || u.Role == RoleHRManager
}

func IsEmployee(u UserContext) bool {
	return u.Role == RoleEmployee
}

func IsFinance(u UserContext) bool {
	return u.Role == RoleFinance
}

// AnyOf composes predicates with a logical OR.
func AnyOf(preds ...Predicate) Predicate {
	return func(u UserContext) bool {
		for _, pred := range preds {
			if pred(u) {
				return true
			}
		}
		return false
	}
}

func ValidRole(role string) bool {
	for _, candidate := range Roles {
		if role == candidate {
			return true
		}
	}
	return false
}

func ValidDepartment(department string) bool {
	if department == "" {
		return true
	}
	for _, candidate := range Departments {
		if department == candidate {
			return true
		}
	}
	return false
}
