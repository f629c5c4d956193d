package charts

import (
	"fmt"
	"html"
)

// ChartSnippet represents an embeddable chart fragment.
// Div should contain a single root <div id="..."> holding the chart markup.
// Script should contain the <script>...</script> block that wires interaction for that div.
// HTML contains the complete snippet with div + script combined for template substitution.
type ChartSnippet struct {
	ID     string
	Title  string
	Div    string
	Script string
	HTML   string
}

// tooltipScript shows the data-tooltip of a hovered dot next to the pointer.
// It mirrors Tooltip.Show on mouseover and Tooltip.Hide on mouseout; the
// offsets are filled in from TooltipOffsetX and TooltipOffsetY.
const tooltipScript = `<script>(function(){
var root=document.getElementById('%s');if(!root)return;
var tip=document.createElement('div');tip.id='tooltip';tip.className='tooltip';tip.style.display='none';tip.style.position='absolute';
document.body.appendChild(tip);
root.querySelectorAll('circle.dot').forEach(function(dot){
dot.addEventListener('mouseover',function(ev){tip.innerHTML=dot.getAttribute('data-tooltip');tip.setAttribute('data-year',dot.getAttribute('data-xvalue'));tip.style.left=(ev.pageX+%d)+'px';tip.style.top=(ev.pageY+%d)+'px';tip.style.display='block';});
dot.addEventListener('mouseout',function(){tip.style.display='none';});
});
})();</script>`

// newSVGSnippet wraps a rendered SVG document with its hover script
func newSVGSnippet(svgDoc []byte) ChartSnippet {
	id := "chart-scatter"
	div := fmt.Sprintf("<div id=\"%s\" class=\"vis-container\">%s</div>", id, svgDoc)
	script := fmt.Sprintf(tooltipScript, id, TooltipOffsetX, TooltipOffsetY)

	completeHTML := fmt.Sprintf(`<div class="chart-container">
	<h3>%s</h3>
	%s
</div>
%s`, html.EscapeString(ChartTitle), div, script)

	return ChartSnippet{ID: id, Title: ChartTitle, Div: div, Script: script, HTML: completeHTML}
}

// newInteractiveSnippet embeds the standalone ECharts page stored next to
// the report under fileName.
func newInteractiveSnippet(fileName string, width, height float64) ChartSnippet {
	id := "chart-scatter-interactive"
	title := "Interactive view"
	div := fmt.Sprintf("<div id=\"%s\"><iframe src=\"%s\" title=\"%s\" style=\"width:%dpx;height:%dpx;border:0;\"></iframe></div>",
		id, html.EscapeString(fileName), html.EscapeString(title), px(width)+40, px(height)+40)

	completeHTML := fmt.Sprintf(`<div class="chart-container">
	<h3>%s</h3>
	%s
</div>`, html.EscapeString(title), div)

	return ChartSnippet{ID: id, Title: title, Div: div, HTML: completeHTML}
}
