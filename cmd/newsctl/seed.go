package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"newsapi/pkg/newsclient"
)

// sampleNews is created oldest first so that the list shows it newest first.
var sampleNews = []newsclient.CreateInput{
	{
		Title:    "Mario Hugo denuncia robo de calcetines en el barrio",
		Content:  "El vecino Mario Hugo ha presentado una denuncia formal por el robo sistemático de calcetines en su barrio. Según su testimonio, los ladrones solo se llevan el calcetín izquierdo, dejando el derecho en su lugar.",
		Author:   "Policarpo Avendaño",
		Category: "Seguridad",
	},
	{
		Title:    "Patana Tufillo gana premio al mejor chef del año",
		Content:  "La reconocida chef Patana Tufillo ha sido galardonada con el premio 'Chef del Año' por su innovadora receta de completos italianos con palta. El jurado destacó la creatividad y el sabor único de sus preparaciones.",
		Author:   "Juanín Juan Harry",
		Category: "Gastronomía",
	},
	{
		Title:    "Tulio Triviño anuncia nueva campaña presidencial",
		Content:  "El reconocido periodista Tulio Triviño ha anunciado oficialmente su candidatura para las próximas elecciones presidenciales. En una conferencia de prensa realizada en los estudios de 31 Minutos, Triviño declaró que su principal propuesta será la implementación de noticias las 24 horas del día.",
		Author:   "Juan Carlos Bodoque",
		Category: "Política",
	},
}

func (c *cli) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the sample items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, in := range sampleNews {
				n, err := c.client.Create(cmd.Context(), in)
				if err != nil {
					return fmt.Errorf("failed to seed %q: %w", in.Title, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Created news: %d %s\n", n.ID, n.Title)
			}
			return nil
		},
	}
}
