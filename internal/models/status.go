package models

// DefaultStatusID is assigned to tasks created without a status.
const DefaultStatusID int64 = 1

type TaskStatus struct {
	ID   int64
	Name string
}

// Statuses is the fixed reference enumeration. The todo_task_status
// table carries the same rows so task writes stay store-enforced.
var Statuses = []TaskStatus{
	{ID: 1, Name: "Novo"},
	{ID: 2, Name: "Em andamento"},
	{ID: 3, Name: "Pronto para avaliar"},
	{ID: 4, Name: "Ajuste necessário"},
	{ID: 5, Name: "Finalizado"},
}
