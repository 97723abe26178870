package form

import "github.com/iliyamo/fyyur/internal/model"

// ArtistForm is the payload of the new-artist and edit-artist forms.
type ArtistForm struct {
	Name               string   `form:"name" json:"name" validate:"required,max=120"`
	City               string   `form:"city" json:"city" validate:"required,max=120"`
	State              string   `form:"state" json:"state" validate:"required,state"`
	Phone              string   `form:"phone" json:"phone" validate:"max=120"`
	ImageLink          string   `form:"image_link" json:"image_link" validate:"omitempty,url,max=500"`
	Genres             []string `form:"genres" json:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" json:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" json:"website_link" validate:"omitempty,url,max=120"`
	SeekingVenue       Checkbox `form:"seeking_venue" json:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" json:"seeking_description" validate:"max=320"`
}

// Normalize trims whitespace from the text fields.
func (f *ArtistForm) Normalize() {
	clean(&f.Name, &f.City, &f.State, &f.Phone, &f.ImageLink,
		&f.FacebookLink, &f.WebsiteLink, &f.SeekingDescription)
}

// Artist converts the form into an artist record with the given id.
func (f *ArtistForm) Artist(id uint64) *model.Artist {
	return &model.Artist{
		ID:                 id,
		Name:               f.Name,
		Genres:             append([]string(nil), f.Genres...),
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Website:            f.WebsiteLink,
		FacebookLink:       f.FacebookLink,
		SeekingVenue:       bool(f.SeekingVenue),
		SeekingDescription: f.SeekingDescription,
		ImageLink:          f.ImageLink,
	}
}

// ArtistDefinition describes the artist form fields.
func ArtistDefinition() Definition {
	return Definition{Fields: []Field{
		text("name", "Name", true, 120),
		text("city", "City", true, 120),
		{Name: "state", Label: "State", Type: "select", Required: true, Choices: StateChoices()},
		text("phone", "Phone", false, 120),
		text("image_link", "Image Link", false, 500),
		{Name: "genres", Label: "Genres", Type: "multiselect", Required: true, Choices: GenreChoices()},
		text("facebook_link", "Facebook Link", false, 120),
		text("website_link", "Website Link", false, 120),
		{Name: "seeking_venue", Label: "Looking for Venues", Type: "checkbox"},
		{Name: "seeking_description", Label: "Seeking Description", Type: "textarea", MaxLength: 320},
	}}
}

// ArtistValues prefills the artist form from a stored record.
func ArtistValues(a *model.Artist) map[string]any {
	return map[string]any{
		"name":                a.Name,
		"city":                a.City,
		"state":               a.State,
		"phone":               a.Phone,
		"image_link":          a.ImageLink,
		"genres":              a.Genres,
		"facebook_link":       a.FacebookLink,
		"website_link":        a.Website,
		"seeking_venue":       a.SeekingVenue,
		"seeking_description": a.SeekingDescription,
	}
}
