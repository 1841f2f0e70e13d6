package services

import (
	"strings"
	"testing"

	"intervuehub/models"
	"intervuehub/rubric"
)

func studentTurn(text string) models.InterviewTurn {
	return models.InterviewTurn{Speaker: models.SpeakerStudent, Text: text}
}

func personaTurn(text string) models.InterviewTurn {
	return models.InterviewTurn{Speaker: models.SpeakerPersona, Text: text}
}

func TestValidateEmptyTranscript(t *testing.T) {
	msg := ValidateInterview(nil)
	if msg != rubric.EdgeCaseResponses()[rubric.EdgeEmptyTranscript] {
		t.Errorf("Expected empty transcript message, got %q", msg)
	}
}

func TestValidateTooShort(t *testing.T) {
	turns := []models.InterviewTurn{
		studentTurn("Hello, how are you today?"),
		personaTurn("I'm doing well, thanks."),
		studentTurn("What do you do for work?"),
		personaTurn("I'm a librarian."),
		personaTurn("Well, retired now."),
	}
	msg := ValidateInterview(turns)
	if msg != rubric.EdgeCaseResponses()[rubric.EdgeTooShort] {
		t.Errorf("Expected too short message, got %q", msg)
	}
}

func TestValidateOneSided(t *testing.T) {
	turns := []models.InterviewTurn{
		studentTurn("Hello there, thanks for joining me today."),
		studentTurn("Can you tell me about your background?"),
		studentTurn("What motivates you in your daily work?"),
		studentTurn("How do you feel about your neighborhood?"),
		studentTurn("Anything else you would like to add?"),
		personaTurn("Sure."),
	}
	msg := ValidateInterview(turns)
	if msg != rubric.EdgeCaseResponses()[rubric.EdgeOneSided] {
		t.Errorf("Expected one sided message, got %q", msg)
	}
}

func TestValidateOffTopicWhenNoQuestions(t *testing.T) {
	turns := []models.InterviewTurn{
		studentTurn("I really like the weather today and the coffee here."),
		personaTurn("That's nice."),
		studentTurn("Anyway I watched a great movie last night about dogs."),
		personaTurn("Okay."),
		studentTurn("And my favorite team won their game this weekend too."),
	}
	msg := ValidateInterview(turns)
	if msg != rubric.EdgeCaseResponses()[rubric.EdgeOffTopic] {
		t.Errorf("Expected off topic message, got %q", msg)
	}
}

func TestValidateOffTopicWhenTooLittleContent(t *testing.T) {
	turns := []models.InterviewTurn{
		studentTurn("Hi?"),
		personaTurn("Hello."),
		studentTurn("Ok? Fine?"),
		personaTurn("Sure."),
		studentTurn("Yes? No?"),
	}
	msg := ValidateInterview(turns)
	if msg != rubric.EdgeCaseResponses()[rubric.EdgeOffTopic] {
		t.Errorf("Expected off topic message for thin content, got %q", msg)
	}
}

func TestValidatePassesNormalInterview(t *testing.T) {
	turns := []models.InterviewTurn{
		studentTurn("Hello, my name is Sam. Could you tell me about yourself?"),
		personaTurn("I'm Margaret, a retired librarian from Portland."),
		studentTurn("What did you enjoy most about working in libraries?"),
		personaTurn("Helping students find exactly the book they needed."),
		studentTurn("Thank you for sharing. Is there anything else you'd like to add?"),
		personaTurn("No, I think that covers it."),
	}
	if msg := ValidateInterview(turns); msg != "" {
		t.Errorf("Expected valid interview to pass, got %q", msg)
	}
}

func TestValidateCheckOrder(t *testing.T) {
	// A transcript failing multiple checks reports the first one.
	turns := []models.InterviewTurn{
		studentTurn("hi"),
		studentTurn("ok"),
	}
	msg := ValidateInterview(turns)
	if !strings.Contains(msg, "too brief") {
		t.Errorf("Expected too short to win over later checks, got %q", msg)
	}
}
