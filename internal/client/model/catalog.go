package model

// DefaultSiteName is shown until an admin renames the site.
const DefaultSiteName = "TeachReach"

// SeedServices is the catalog shown before any admin edit.
func SeedServices() []Service {
	return []Service{
		{ID: "svc1", Title: "Logo Design", Image: "https://picsum.photos/seed/logo/600/400", Price: 50, Category: "Design", Description: "A custom logo with three concepts and two revision rounds.", DeliveryDays: 3},
		{ID: "svc2", Title: "Landing Page", Image: "https://picsum.photos/seed/landing/600/400", Price: 250, Category: "Development", Description: "Responsive single-page site built from your brief.", DeliveryDays: 7},
		{ID: "svc3", Title: "SEO Audit", Image: "https://picsum.photos/seed/seo/600/400", Price: 120, Category: "Marketing", Description: "Technical and content audit with a prioritised action list.", DeliveryDays: 5},
		{ID: "svc4", Title: "Private Tutoring Hour", Image: "https://picsum.photos/seed/tutor/600/400", Price: 35, Category: "Education", Description: "One-to-one online session on the subject of your choice.", DeliveryDays: 1},
		{ID: "svc5", Title: "Video Editing", Image: "https://picsum.photos/seed/video/600/400", Price: 180, Category: "Media", Description: "Edit, colour and sound-mix up to ten minutes of footage.", DeliveryDays: 6},
	}
}
