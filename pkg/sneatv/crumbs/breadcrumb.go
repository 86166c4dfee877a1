package crumbs

// Breadcrumb is one segment of a path. The segment of the current location
// has no action and cannot be clicked.
type Breadcrumb struct {
	Title  string
	action func()
}

func NewBreadcrumb(title string, action func()) Breadcrumb {
	return Breadcrumb{Title: title, action: action}
}

func (b Breadcrumb) Clickable() bool {
	return b.action != nil
}

// Activate runs the action and reports whether there was one.
func (b Breadcrumb) Activate() bool {
	if b.action == nil {
		return false
	}
	b.action()
	return true
}
