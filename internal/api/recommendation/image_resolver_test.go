package recommendation

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const placeholder = "https://example.org/placeholder.png"

func newTestResolver(llm *MockTextGenerator, media *MockMediaSearcher) *ImageResolver {
	return NewImageResolver(llm, media, placeholder, "English", []string{"Thailand", "Bangkok"}, slog.Default())
}

func TestImageResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("first loosely matching file wins", func(t *testing.T) {
		llm := new(MockTextGenerator)
		media := new(MockMediaSearcher)
		llm.On("Generate", mock.Anything, buildTranslateNamePrompt("English", "วัดอรุณ"), mock.Anything).
			Return([]string{" \"Wat Arun\"\n"}, nil).Once()
		media.On("SearchFiles", mock.Anything, "Wat Arun Thailand").
			Return([]string{"File:Grand Palace.jpg", "File:Wat_Arun_at_dusk.jpg"}, nil).Once()
		media.On("FileURL", mock.Anything, "File:Wat_Arun_at_dusk.jpg").
			Return("https://upload.example.org/wat_arun.jpg", nil).Once()

		got := newTestResolver(llm, media).Resolve(ctx, "วัดอรุณ")

		assert.Equal(t, "https://upload.example.org/wat_arun.jpg", got)
		llm.AssertExpectations(t)
		media.AssertExpectations(t)
	})

	t.Run("falls through variants to bare name", func(t *testing.T) {
		llm := new(MockTextGenerator)
		media := new(MockMediaSearcher)
		llm.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return([]string{"Chatuchak Market"}, nil).Once()
		media.On("SearchFiles", mock.Anything, "Chatuchak Market Thailand").Return([]string{"File:Unrelated.png"}, nil).Once()
		media.On("SearchFiles", mock.Anything, "Chatuchak Market Bangkok").Return(nil, errors.New("timeout")).Once()
		media.On("SearchFiles", mock.Anything, "Chatuchak Market").Return([]string{"File:Chatuchak.jpg"}, nil).Once()
		// "chatuchak" is contained in the translated name
		media.On("FileURL", mock.Anything, "File:Chatuchak.jpg").Return("https://upload.example.org/c.jpg", nil).Once()

		got := newTestResolver(llm, media).Resolve(ctx, "ตลาดนัดจตุจักร")

		assert.Equal(t, "https://upload.example.org/c.jpg", got)
		media.AssertExpectations(t)
	})

	t.Run("translation failure uses original name", func(t *testing.T) {
		llm := new(MockTextGenerator)
		media := new(MockMediaSearcher)
		llm.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("quota")).Once()
		media.On("SearchFiles", mock.Anything, "เขาใหญ่ Thailand").Return([]string{"File:เขาใหญ่.jpg"}, nil).Once()
		media.On("FileURL", mock.Anything, "File:เขาใหญ่.jpg").Return("https://upload.example.org/k.jpg", nil).Once()

		assert.Equal(t, "https://upload.example.org/k.jpg", newTestResolver(llm, media).Resolve(ctx, "เขาใหญ่"))
	})

	t.Run("no match returns placeholder", func(t *testing.T) {
		llm := new(MockTextGenerator)
		media := new(MockMediaSearcher)
		llm.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil).Once()
		media.On("SearchFiles", mock.Anything, mock.Anything).Return([]string{"File:Something else.jpg"}, nil).Times(3)

		assert.Equal(t, placeholder, newTestResolver(llm, media).Resolve(ctx, "ที่ลับ"))
		media.AssertNotCalled(t, "FileURL", mock.Anything, mock.Anything)
	})

	t.Run("url lookup failure moves to next variant", func(t *testing.T) {
		llm := new(MockTextGenerator)
		media := new(MockMediaSearcher)
		llm.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return([]string{"Lumpini Park"}, nil).Once()
		media.On("SearchFiles", mock.Anything, "Lumpini Park Thailand").Return([]string{"File:Lumpini Park.jpg"}, nil).Once()
		media.On("FileURL", mock.Anything, "File:Lumpini Park.jpg").Return("", errors.New("gone")).Once()
		media.On("SearchFiles", mock.Anything, "Lumpini Park Bangkok").Return([]string{"File:Lumpini_Park_2.jpg"}, nil).Once()
		media.On("FileURL", mock.Anything, "File:Lumpini_Park_2.jpg").Return("https://upload.example.org/l2.jpg", nil).Once()

		assert.Equal(t, "https://upload.example.org/l2.jpg", newTestResolver(llm, media).Resolve(ctx, "สวนลุมพินี"))
	})
}

func TestLooselyMatches(t *testing.T) {
	tests := []struct {
		title  string
		needle string
		want   bool
	}{
		{"File:Wat_Arun.jpg", "wat arun", true},
		{"File:Wat Arun temple at night.JPG", "wat arun", true},
		{"File:Arun.png", "wat arun", true},
		{"File:Grand Palace.jpg", "wat arun", false},
		{"File:.jpg", "wat arun", false},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, looselyMatches(fileStem(tt.title), tt.needle))
		})
	}
}
