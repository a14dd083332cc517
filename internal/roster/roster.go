// Package roster holds the school's classes and students in memory.
// Remarks are the only field that changes after a student is added.
package roster

import (
	"fmt"
	"slices"
	"sync"
)

// Student is a member of a class. Empty RollNo and Section mean unknown.
type Student struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	RollNo  string `json:"roll_no"`
	Section string `json:"section"`
	Remarks string `json:"remarks"`
}

// Class is a named, ordered list of students.
type Class struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Students []Student `json:"students"`
}

// Store is an in-memory roster. It assigns student ids sequentially from 1
// and serializes writes; concurrent remark updates resolve last-write-wins.
type Store struct {
	mu      sync.RWMutex
	classes []*Class
	nextID  int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// AddClass appends an empty class. Class ids must be unique.
func (s *Store) AddClass(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(id) != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateClass, id)
	}
	s.classes = append(s.classes, &Class{ID: id, Name: name, Students: []Student{}})
	return nil
}

// AddStudent appends a student to a class and returns it with its assigned id.
func (s *Store) AddStudent(classID, name, rollNo, section string) (Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(classID)
	if c == nil {
		return Student{}, fmt.Errorf("%w: %s", ErrClassNotFound, classID)
	}

	st := Student{
		ID:      s.nextID,
		Name:    name,
		RollNo:  rollNo,
		Section: section,
	}
	s.nextID++
	c.Students = append(c.Students, st)
	return st, nil
}

// ListClasses returns copies of every class in roster order.
func (s *Store) ListClasses() []Class {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Class, 0, len(s.classes))
	for _, c := range s.classes {
		out = append(out, c.clone())
	}
	return out
}

// FindClass returns a copy of the class with the given id.
func (s *Store) FindClass(id string) (Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.find(id)
	if c == nil {
		return Class{}, fmt.Errorf("%w: %s", ErrClassNotFound, id)
	}
	return c.clone(), nil
}

// RecordRemarks replaces a student's remarks and returns the updated student.
func (s *Store) RecordRemarks(classID string, studentID int, text string) (Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(classID)
	if c == nil {
		return Student{}, fmt.Errorf("%w: %s", ErrClassNotFound, classID)
	}

	i := slices.IndexFunc(c.Students, func(st Student) bool { return st.ID == studentID })
	if i < 0 {
		return Student{}, fmt.Errorf("%w: %d in %s", ErrStudentNotFound, studentID, classID)
	}

	c.Students[i].Remarks = text
	return c.Students[i], nil
}

func (s *Store) find(id string) *Class {
	for _, c := range s.classes {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (c *Class) clone() Class {
	return Class{
		ID:       c.ID,
		Name:     c.Name,
		Students: slices.Clone(c.Students),
	}
}
