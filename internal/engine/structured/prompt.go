package structured

import (
	"fmt"
	"time"
)

// The instruction templates are fixed: the backend is asked to scan, group
// repeated references to the same named event, classify event vs task, and
// emit a bare JSON array matching the CandidateEvent contract.

const promptBody = `Extract all events, deadlines, exams, lectures, and important dates from %s. The same event can be referenced in various parts of the document, each with some context. Make sure to group these events if you are sure they are the same

STEPS
- SCAN: Initially go through the document and note important names that refer to events or tasks, make sure to get anything academically related
- COLLECT: Collect info about events, grouping them by their names (make sure to distinguish separate midterms)
- COLLECT A SECOND TIME QUICKLY: make sure to not make duplicates
- OUTPUT: Output the events with enough info about them to be able to create a simple calendar event

CLASSIFY each item as either an "event" or "task":
- EVENTS: Have specific start and end times (lectures, labs, discussions, exams, meetings, office hours)
- TASKS: Only have due dates, no specific time needed (assignments, projects, homework, papers)

Return a JSON array. Each item should have:
- type: Either "event" or "task"
- title: A short, descriptive title, do not include the date or time
- start_text: The exact start date/time mentioned (keep original format) OR due date for tasks
- end_text: The exact end date/time mentioned, or "1 hour" for events, "0" for tasks
- location: Building name, room number, or "Online" if mentioned (usually empty for tasks)
- description: For recurring events/tasks, include days of week (e.g., "Lecture MWF", "Lab TTH", "Assignment Monday"). For non-recurring: Category like "Lecture", "Lab", "Exam", "Discussion", "Assignment", "Project"
- recurring: Boolean indicating if this event/task recurs (e.g., weekly lectures, weekly assignments, recurring meetings). Events/tasks for which there is not specified date but there is a day of the week (or multiple ex: M W (Every Monday and Wednesday)) are likely to be recurring

Important rules:
1. Use the text's actual date formats (don't convert to ISO unless necessary)
2. For events without time, assume reasonable defaults (10am for classes, 3pm for exams)
3. For tasks, use the due date as start_text and set end_text to "0"
4. For recurring events or tasks, include days in description (e.g., "MWF", "TTH", "Monday Wednesday Friday", "Assignment Monday") so the recurrence pattern can be determined
5. Return ONLY valid JSON, no markdown formatting
6. Minimum event/task details: name, time, date

Current date context: %s
`

// textPrompt builds the instruction template for a plain-text document.
func textPrompt(docText string, ref time.Time) string {
	header := "You are an expert at extracting calendar events from academic syllabi and course schedules.\n\n"
	body := fmt.Sprintf(promptBody, "the following text", ref.Format(time.RFC3339))
	return header + body + "\nText to analyze:\n" + docText + "\n\nReturn JSON array:"
}

// imagePrompt builds the instruction template for an image document; the
// image itself travels as an inline attachment.
func imagePrompt(ref time.Time) string {
	header := "You are an expert at extracting calendar events from academic syllabi and course schedules.\n\n"
	body := fmt.Sprintf(promptBody, "this image", ref.Format(time.RFC3339))
	return header + body + "\nReturn JSON array:"
}

// namingPrompt asks for a short course code or title for calendar naming.
func namingPrompt(snippet string) string {
	return fmt.Sprintf(`Extract the course code and number from this syllabus. This is VERY IMPORTANT.

PRIORITY 1 (HIGHEST PRIORITY): Look for course codes with format [Department][Number]
Examples: "CS 61A", "CS 101", "Math 55", "MATH 1B", "ENG 125", "EECS 16A", "CHEM 1C"
Format is typically: [2-4 letter department code] [number][optional letter]

PRIORITY 2: If no course code is found, extract the course title/topic
Examples: "Discrete Mathematics", "Introduction to Algorithms", "Calculus I"

DO NOT return generic terms like "Math", "Computer Science", "English", "Physics", etc.
DO NOT return the word "syllabus", "course", "class", or "schedule".

READ THE SYLLABUS CONTENT BELOW CAREFULLY and extract the specific course information:

Syllabus content:
%s

Return ONLY the course code or title from the content above (max 30 characters), nothing else:`, snippet)
}
