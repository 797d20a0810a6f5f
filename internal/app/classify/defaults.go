package classify

import "github.com/centavo-app/centavo/internal/domain"

// DefaultCategory is a stock category offered to new users.
type DefaultCategory struct {
	Name      string
	Direction domain.Direction
	Keywords  []string
}

// DefaultCategories returns the stock category set with curated keyword
// lists, used to seed a new user's account.
func DefaultCategories() []DefaultCategory {
	return []DefaultCategory{
		{"Alimentação", domain.Expense, []string{
			"ifood", "uber eats", "rappi", "restaurante", "lanchonete",
			"mercado", "supermercado", "padaria", "pizza", "delivery",
			"cafe", "cafeteria", "marmita",
		}},
		{"Transporte", domain.Expense, []string{
			"uber", "99", "cabify", "posto", "combustivel", "gasolina",
			"estacionamento", "pedagio", "onibus", "metro", "passagem",
		}},
		{"Moradia", domain.Expense, []string{
			"aluguel", "condominio", "iptu", "luz", "energia", "agua",
			"gas", "internet", "celular", "manutencao",
		}},
		{"Saúde", domain.Expense, []string{
			"farmacia", "drogaria", "consulta", "medico", "dentista",
			"exame", "laboratorio", "hospital", "academia", "plano de saude",
		}},
		{"Lazer", domain.Expense, []string{
			"netflix", "spotify", "cinema", "ingresso", "show", "viagem",
			"hotel", "airbnb", "jogo", "streaming",
		}},
		{"Educação", domain.Expense, []string{
			"curso", "faculdade", "escola", "livro", "livraria",
			"mensalidade", "material escolar",
		}},
		{"Contas", domain.Expense, []string{
			"fatura", "cartao", "boleto", "parcela", "emprestimo",
			"financiamento", "seguro", "imposto", "taxa", "anuidade",
		}},
		{"Salário", domain.Income, []string{
			"salario", "pagamento", "holerite", "adiantamento", "ferias",
			"decimo terceiro", "bonus", "comissao",
		}},
		{"Freelance", domain.Income, []string{
			"freelance", "projeto", "servico", "consultoria", "freela",
			"nota fiscal", "cliente",
		}},
		{"Investimentos", domain.Income, []string{
			"dividendo", "rendimento", "juros", "resgate", "tesouro",
			"cdb", "acao", "fii",
		}},
		{"Outros Ganhos", domain.Income, []string{
			"venda", "reembolso", "cashback", "premio", "presente",
			"transferencia recebida",
		}},
	}
}
