package notes

// DefaultTags is the tag vocabulary used when none is configured.
var DefaultTags = []string{
	"Work",
	"Personal",
	"Meeting",
	"Shopping",
	"Ideas",
	"Travel",
	"Finance",
	"Health",
	"Important",
	"Todo",
}
