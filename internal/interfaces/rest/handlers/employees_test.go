package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/songphoh/temp-trackerV3/internal/domain"
	"github.com/songphoh/temp-trackerV3/internal/interfaces/rest/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminHeader() map[string]string {
	return map[string]string{"X-Admin-Token": "admin-secret"}
}

func TestListEmployees_FiltersBySearchTerm(t *testing.T) {
	fx := newFixture(t)
	fx.employees.add(&domain.Employee{EmpCode: "E001", FullName: "Somchai Jaidee", Active: true})
	fx.employees.add(&domain.Employee{EmpCode: "E002", FullName: "Malee Srisuk", Active: true})
	fx.employees.add(&domain.Employee{EmpCode: "E003", FullName: "Somsak Retired", Active: false})

	w := fx.do(http.MethodGet, "/api/employees?search=somchai", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.EmployeeListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Employees, 1)
	assert.Equal(t, "E001", resp.Employees[0].EmpCode)
}

func TestListEmployees_EmptyTermReturnsActiveRoster(t *testing.T) {
	fx := newFixture(t)
	fx.employees.add(&domain.Employee{EmpCode: "E001", FullName: "Somchai", Active: true})
	fx.employees.add(&domain.Employee{EmpCode: "E002", FullName: "Malee", Active: true})

	w := fx.do(http.MethodGet, "/api/employees", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.EmployeeListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Employees, 2)
}

func TestAdminEndpoints_RequireToken(t *testing.T) {
	fx := newFixture(t)

	body := `{"empCode":"E010","fullName":"New Hire"}`

	w := fx.do(http.MethodPost, "/api/admin/employees", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = fx.do(http.MethodPost, "/api/admin/employees", body, map[string]string{"X-Admin-Token": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = fx.do(http.MethodPost, "/api/admin/employees", body, adminHeader())
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateEmployee_RejectsDuplicateCode(t *testing.T) {
	fx := newFixture(t)
	fx.employees.add(&domain.Employee{EmpCode: "E001", FullName: "Somchai", Active: true})

	w := fx.do(http.MethodPost, "/api/admin/employees", `{"empCode":"E001","fullName":"Clone"}`, adminHeader())
	require.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "DUPLICATE_EMP_CODE", resp.Error.Code)
}

func TestUpdateEmployee_AppliesChanges(t *testing.T) {
	fx := newFixture(t)
	emp := fx.employees.add(&domain.Employee{EmpCode: "E001", FullName: "Somchai", Active: true})

	w := fx.do(http.MethodPut, "/api/admin/employees/"+emp.ID,
		`{"empCode":"E001","fullName":"Somchai Jaidee","department":"Kitchen","active":false}`, adminHeader())
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.EmployeeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Employee)
	assert.Equal(t, "Somchai Jaidee", resp.Employee.FullName)
	assert.Equal(t, "Kitchen", resp.Employee.Department)
	assert.False(t, resp.Employee.Active)
}

func TestDeleteEmployee_DeactivatesRatherThanRemoves(t *testing.T) {
	fx := newFixture(t)
	emp := fx.employees.add(&domain.Employee{EmpCode: "E001", FullName: "Somchai", Active: true})

	w := fx.do(http.MethodDelete, "/api/admin/employees/"+emp.ID, "", adminHeader())
	require.Equal(t, http.StatusOK, w.Code)

	roster := fx.do(http.MethodGet, "/api/employees", "", nil)
	var resp handlers.EmployeeListResponse
	require.NoError(t, json.Unmarshal(roster.Body.Bytes(), &resp))
	assert.Empty(t, resp.Employees, "a deleted employee must leave the public roster")
}
