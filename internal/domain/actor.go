package domain

// Actor аутентифицированный вызывающий операции
type Actor struct {
	UserID int64
	Role   string

	// OutletID заведение, к которому привязана партнерская роль
	OutletID *int64
}

// IsAdmin returns true for platform-wide admin roles
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin || a.Role == RoleSuperAdmin
}

// IsPartner returns true for outlet staff roles
func (a Actor) IsPartner() bool {
	return a.Role == RolePartnerManager || a.Role == RolePartnerStaff
}

// CanManageOutlet reports whether the actor may operate on the outlet's orders
func (a Actor) CanManageOutlet(outletID int64) bool {
	if a.IsAdmin() {
		return true
	}
	if a.IsPartner() {
		return a.OutletID != nil && *a.OutletID == outletID
	}
	return false
}
