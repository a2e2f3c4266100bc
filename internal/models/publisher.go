package models

// Publisher представляет издателя — простую размеченную сущность без
// собственных правил доступа.
type Publisher struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// DummyPublisher представляет данные издателя из запроса.
type DummyPublisher struct {
	Name  string `json:"name" validate:"required"`
	Image string `json:"image" validate:"required,url"`
}
