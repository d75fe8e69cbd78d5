package pipeline

import "fmt"

// imagePrompt templates the analysis text into the visual-only infographic
// prompt sent to the text-to-image model.
func imagePrompt(analysisText string) string {
	return fmt.Sprintf(`Create a visual-only infographic with these elements:
        - Clean white background with professional blue and gray accents
        - Top section: Business-related icons representing key concepts from "%s"
        - Middle section: Simple arrow flow or connection between icons showing progression
        - Bottom section: A large, prominent gesture icon (thumbs up if positive sentiment, thumbs down if negative, or horizontal hand for neutral)
        - Use simple, flat design icons in a consistent style
        - The bottom gesture should be larger and highlighted with a colored circle background
        - Include visual elements like arrows, charts, or graphs without any text
        Style: minimal flat icons, material design style, clean vector graphics, corporate aesthetic, high contrast symbols`, analysisText)
}
