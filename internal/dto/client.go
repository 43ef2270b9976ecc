package dto

import (
	"github.com/BruksfildServices01/salon-manager/internal/domain/client"
)

type ClientRequest struct {
	client.Client
	BirthDate Date `json:"birth_date"`
}

func (r ClientRequest) ToDomain() client.Client {
	c := r.Client
	c.ID = ""
	c.BirthDate = r.BirthDate.Time
	return c
}

type ClientPatchRequest struct {
	client.Patch
	BirthDate *Date `json:"birth_date,omitempty"`
}

func (r ClientPatchRequest) ToDomain() client.Patch {
	p := r.Patch
	p.BirthDate = timePtr(r.BirthDate)
	return p
}
