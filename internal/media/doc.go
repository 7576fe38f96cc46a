// Package media defines the external collaborator contracts the alignment
// engine depends on - audio window extraction and speech recognition - and
// provides the production implementations: an ffmpeg-backed extractor and a
// Google Web Speech HTTP recognizer.
//
// Provider failures are classified with services.ErrTransient or
// services.ErrPermanent so the job retry policy can branch on errors.Is.
package media
