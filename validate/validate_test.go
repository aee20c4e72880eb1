package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicates(t *testing.T) {
	assert.True(t, ValidName("  Al "))
	assert.True(t, ValidName("علي"))
	assert.False(t, ValidName(" A "))
	assert.False(t, ValidName(""))

	assert.True(t, ValidAge(5))
	assert.True(t, ValidAge(25))
	assert.False(t, ValidAge(4))
	assert.False(t, ValidAge(26))

	assert.True(t, ValidPhone("5012 3456"))
	assert.True(t, ValidPhone("123456789012345"))
	assert.False(t, ValidPhone("1234567"))
	assert.False(t, ValidPhone("1234567890123456"))
	assert.False(t, ValidPhone("+966501234567"))

	assert.True(t, ValidEmail("a@b.co"))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail("a b@c.d"))

	assert.True(t, ValidGrade(0))
	assert.True(t, ValidGrade(100))
	assert.False(t, ValidGrade(-0.5))
	assert.False(t, ValidGrade(100.1))
}

type form struct {
	Name  string  `json:"name" validate:"personname"`
	Age   int     `json:"age" validate:"age"`
	Class string  `json:"class" validate:"classlabel"`
	Phone string  `json:"phone" validate:"phone"`
	Email string  `json:"email" validate:"simpleemail"`
	Score float64 `json:"grade" validate:"score"`
	Date  string  `json:"date" validate:"isodate"`
	Skip  string  `json:"-"`
}

func TestStruct(t *testing.T) {
	ok := form{Name: "Sara", Age: 12, Class: "الأول", Phone: "501234567", Email: "s@x.io", Score: 90, Date: "2026-01-02"}
	assert.NoError(t, Struct(ok))

	bad := form{Name: "S", Age: 40, Class: "x", Phone: "12", Email: "nope", Score: 101, Date: "yesterday"}
	err := Struct(bad)
	require.Error(t, err)

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, Errors{
		{Field: "name", Message: MsgFillFields},
		{Field: "age", Message: MsgInvalidAge},
		{Field: "class", Message: MsgFillFields},
		{Field: "phone", Message: MsgInvalidPhone},
		{Field: "email", Message: MsgInvalidEmail},
		{Field: "grade", Message: MsgInvalidGrade},
		{Field: "date", Message: MsgFillFields},
	}, verrs)
	assert.Contains(t, verrs.Error(), "age: error_invalid_age")
}

type mark struct {
	StudentID int64  `json:"studentId" validate:"required"`
	Status    string `json:"status" validate:"status"`
}

type sheet struct {
	Date  string `json:"date" validate:"isodate"`
	Marks []mark `json:"marks" validate:"dive"`
}

func TestStructReportsEachListItem(t *testing.T) {
	err := Struct(sheet{
		Date: "2026-10-16",
		Marks: []mark{
			{StudentID: 1, Status: "late"},
			{StudentID: 2, Status: "present"},
			{StudentID: 0, Status: "gone"},
		},
	})
	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, Errors{
		{Field: "marks[0].status", Message: MsgFillFields},
		{Field: "marks[2].studentId", Message: MsgFillFields},
		{Field: "marks[2].status", Message: MsgFillFields},
	}, verrs)
}
