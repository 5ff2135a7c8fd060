package content

import (
	"strings"

	"github.com/abhisek/qrayti/internal/api"
)

const demoText = `
Chapitre 1: Introduction au Droit Civil Marocain

Le droit civil marocain est régi par le Dahir des Obligations et Contrats (DOC) promulgué en 1913.
Ce code définit les règles fondamentales régissant les relations entre les personnes privées.

Les principes fondamentaux:
1. La liberté contractuelle - الحرية التعاقدية
2. L'autonomie de la volonté - استقلالية الإرادة
3. La bonne foi dans l'exécution des contrats - حسن النية

Le DOC s'applique à toutes les obligations conventionnelles et légales,
sauf celles qui sont régies par des textes spéciaux.

Section 1: Les sources des obligations
Les obligations peuvent naître de plusieurs sources:
- Le contrat (العقد)
- Le quasi-contrat
- Le délit
- Le quasi-délit
- La loi

Le contrat reste la source principale des obligations en droit marocain.
Il est défini comme l'accord de deux ou plusieurs volontés en vue de créer des effets de droit.

Section 2: La formation du contrat
Pour qu'un contrat soit valablement formé, il faut réunir plusieurs conditions:
- Le consentement des parties
- La capacité juridique
- Un objet certain et licite
- Une cause licite
`

// Demo returns a sample course excerpt that stands in for an uploaded
// document.
func Demo() api.RemoteContent {
	return api.RemoteContent{
		FileName:  "Cours_Droit_Civil_Marocain.pdf",
		Content:   strings.TrimSpace(demoText),
		PageCount: 12,
	}
}
