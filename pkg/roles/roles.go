package roles

type Role string

const (
	Employee          Role = "employee"
	OrganizationAdmin Role = "organization_admin"
	Admin             Role = "admin"
)

type HierarchyLevel int

const (
	EmployeeLevel          HierarchyLevel = 1
	OrganizationAdminLevel HierarchyLevel = 2
	AdminLevel             HierarchyLevel = 3
)

func (r Role) GetHierarchyLevel() HierarchyLevel {
	switch r {
	case Employee:
		return EmployeeLevel
	case OrganizationAdmin:
		return OrganizationAdminLevel
	case Admin:
		return AdminLevel
	default:
		return EmployeeLevel
	}
}

// HasPermission reports whether the role covers the required role.
func (r Role) HasPermission(requiredRole Role) bool {
	return r.GetHierarchyLevel() >= requiredRole.GetHierarchyLevel()
}

func (r Role) IsValid() bool {
	switch r {
	case Employee, OrganizationAdmin, Admin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
