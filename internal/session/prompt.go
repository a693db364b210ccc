package session

// FixedPrompt is appended after the extracted lesson text to form the
// summarize request.
const FixedPrompt = `You are a study assistant. Summarize the lesson material above into clear revision notes. List the key concepts, definitions and formulas first, then give a short plain-language recap of each section, keeping the order of the original material.`
