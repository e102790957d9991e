package console

type Route struct {
	Path  string
	Label string
}

var Routes = []Route{
	{Path: "/", Label: "Dashboard"},
	{Path: "/stores", Label: "Stores"},
	{Path: "/products", Label: "Products"},
	{Path: "/orders", Label: "Orders"},
	{Path: "/users", Label: "Users"},
}

// RouteIndex returns the position of path in Routes, or -1.
func RouteIndex(path string) int {
	for i, r := range Routes {
		if r.Path == path {
			return i
		}
	}
	return -1
}
