package catalog

// Service orchestrates catalog lookups.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []Product {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Product, error) {
	if id <= 0 {
		return Product{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}
