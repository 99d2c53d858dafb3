package handler

import "github.com/staffhub/workforce-system/internal/core/domain"

type employeeRequest struct {
	FullName   string `json:"full_name"  validate:"required"`
	Email      string `json:"email"      validate:"required,email"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Status     string `json:"status"     validate:"omitempty,oneof=active on_leave inactive"`
}

type employeeUpdateRequest struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"      validate:"omitempty,email"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Status     string `json:"status"     validate:"omitempty,oneof=active on_leave inactive"`
}

type employeeListResponse struct {
	Employees []domain.Employee `json:"employees"`
	Count     int               `json:"count"`
}
