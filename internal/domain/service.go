package domain

// ServiceDescriptor is a catalog entry (cleaning, ironing, ...)
type ServiceDescriptor struct {
	ID              string
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
	Active          bool
}
