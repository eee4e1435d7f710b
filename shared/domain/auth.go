package domain

// Admin is the holder of the board administration credential.
type Admin struct {
	Email string
}

// Viewer is whoever is acting on a request: an identity token plus, when an
// admin session is attached, the admin.
type Viewer struct {
	Identity Identity
	Admin    *Admin
}

func (v Viewer) IsAdmin() bool { return v.Admin != nil }

// CanModify reports whether the viewer may edit or delete an item owned by owner.
func (v Viewer) CanModify(owner Identity) bool {
	return v.IsAdmin() || (v.Identity != "" && v.Identity == owner)
}
